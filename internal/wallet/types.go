package wallet

// KeyNode is one serialized key of the tree. Empty fields are not rendered.
type KeyNode struct {
	ExPub         string
	ExPriv        string
	RawComprPub   string
	RawUncomprPub string
	RawPriv       string
	WifPriv       string
	Address       string
}

// HasPrivate reports whether the node carries any private material
func (n *KeyNode) HasPrivate() bool {
	return n.ExPriv != "" || n.RawPriv != "" || n.WifPriv != ""
}

// Document renders the node fields in canonical order
func (n *KeyNode) Document() Document {
	var d Document

	d.addString("ex_pub", n.ExPub)
	d.addString("ex_priv", n.ExPriv)
	d.addString("raw_compr_pub", n.RawComprPub)
	d.addString("raw_uncompr_pub", n.RawUncomprPub)
	d.addString("raw_priv", n.RawPriv)
	d.addString("wif_priv", n.WifPriv)
	d.addString("address", n.Address)

	return d
}

// MoneroKeys holds the Monero spend/view key pairs and the primary address
type MoneroKeys struct {
	PrivSpend      string
	PrivView       string
	PubSpend       string
	PubView        string
	PrimaryAddress string
}

// HasPrivate reports whether the node carries any private material. View-only
// keys hold the private view key and report true, see CanSpend.
func (k *MoneroKeys) HasPrivate() bool {
	return k.PrivSpend != "" || k.PrivView != ""
}

// CanSpend reports whether the private spend key is known
func (k *MoneroKeys) CanSpend() bool {
	return k.PrivSpend != ""
}

// Document renders the keys in canonical order
func (k *MoneroKeys) Document() Document {
	var d Document

	d.addString("priv_spend", k.PrivSpend)
	d.addString("priv_view", k.PrivView)
	d.addString("pub_spend", k.PubSpend)
	d.addString("pub_view", k.PubView)
	d.addString("primary_address", k.PrimaryAddress)

	return d
}

// MoneroSubaddress is one derived Monero subaddress
type MoneroSubaddress struct {
	PubSpend string
	PubView  string
	Address  string
}

// HasPrivate always returns false, subaddresses are public only
func (s *MoneroSubaddress) HasPrivate() bool {
	return false
}

// Document renders the subaddress in canonical order
func (s *MoneroSubaddress) Document() Document {
	var d Document

	d.addString("pub_spend", s.PubSpend)
	d.addString("pub_view", s.PubView)
	d.addString("address", s.Address)

	return d
}

// Node is anything that can be placed in a wallet tree
type Node interface {
	Document() Document
	HasPrivate() bool
	clone() Node
}

// AddressEntry is one labeled entry of an address mapping
type AddressEntry struct {
	Label string
	Node  Node
}

// Addresses is an ordered label -> node mapping
type Addresses []AddressEntry

// Get returns the node stored under label
func (a Addresses) Get(label string) (Node, bool) {
	for _, e := range a {
		if e.Label == label {
			return e.Node, true
		}
	}

	return nil, false
}

// Labels returns the labels in insertion order
func (a Addresses) Labels() []string {
	labels := make([]string, 0, len(a))
	for _, e := range a {
		labels = append(labels, e.Label)
	}

	return labels
}

func (a Addresses) document() Document {
	d := make(Document, 0, len(a))
	for _, e := range a {
		d = append(d, Field{Key: e.Label, Value: e.Node.Document()})
	}

	return d
}

// Tree is the family specific part of a wallet. The set of implementations
// is closed: BipTree, CardanoTree, ElectrumV1Tree, ElectrumV2Tree,
// MoneroTree, AlgorandTree and SubstrateTree.
type Tree interface {
	document() Document
	nodes() []Node
	clone() Tree
}

// BipTree is the purpose/coin/account/change/address tree of BIP-0044 like specs
type BipTree struct {
	MasterKey  *KeyNode
	PurposeKey *KeyNode
	CoinKey    *KeyNode
	AccountIdx *uint32
	AccountKey *KeyNode
	ChangeIdx  *uint32
	ChangeKey  *KeyNode
	AddressOff uint32
	Addresses  Addresses
}

func (t *BipTree) document() Document {
	var d Document

	d.addNode("master_key", t.MasterKey)
	d.addNode("purpose_key", t.PurposeKey)
	d.addNode("coin_key", t.CoinKey)
	d.addUint("account_idx", t.AccountIdx)
	d.addNode("account_key", t.AccountKey)
	d.addUint("change_idx", t.ChangeIdx)
	d.addNode("change_key", t.ChangeKey)
	d.addOffset("address_off", t.AddressOff)
	d.add("address", t.Addresses.document())

	return d
}

func (t *BipTree) nodes() []Node {
	return collect(t.Addresses, t.MasterKey, t.PurposeKey, t.CoinKey, t.AccountKey, t.ChangeKey)
}

// CardanoTree is the CIP-1852 tree: BIP levels plus the staking key
type CardanoTree struct {
	MasterKey  *KeyNode
	PurposeKey *KeyNode
	CoinKey    *KeyNode
	AccountIdx *uint32
	AccountKey *KeyNode
	StakingKey *KeyNode
	ChangeIdx  *uint32
	ChangeKey  *KeyNode
	AddressOff uint32
	Addresses  Addresses
}

func (t *CardanoTree) document() Document {
	var d Document

	d.addNode("master_key", t.MasterKey)
	d.addNode("purpose_key", t.PurposeKey)
	d.addNode("coin_key", t.CoinKey)
	d.addUint("account_idx", t.AccountIdx)
	d.addNode("account_key", t.AccountKey)
	d.addNode("staking_key", t.StakingKey)
	d.addUint("change_idx", t.ChangeIdx)
	d.addNode("change_key", t.ChangeKey)
	d.addOffset("address_off", t.AddressOff)
	d.add("address", t.Addresses.document())

	return d
}

func (t *CardanoTree) nodes() []Node {
	return collect(t.Addresses, t.MasterKey, t.PurposeKey, t.CoinKey, t.AccountKey, t.StakingKey, t.ChangeKey)
}

// ElectrumV1Tree is the flat Electrum V1 tree
type ElectrumV1Tree struct {
	MasterKey  *KeyNode
	ChangeIdx  uint32
	AddressOff uint32
	Addresses  Addresses
}

func (t *ElectrumV1Tree) document() Document {
	var d Document

	d.addNode("master_key", t.MasterKey)
	d.add("change_idx", t.ChangeIdx)
	d.addOffset("address_off", t.AddressOff)
	d.add("address", t.Addresses.document())

	return d
}

func (t *ElectrumV1Tree) nodes() []Node {
	return collect(t.Addresses, t.MasterKey)
}

// ElectrumV2Tree is the Electrum V2 (standard or segwit) tree
type ElectrumV2Tree struct {
	MasterKey  *KeyNode
	ChangeIdx  uint32
	ChangeKey  *KeyNode
	AddressOff uint32
	Addresses  Addresses
}

func (t *ElectrumV2Tree) document() Document {
	var d Document

	d.addNode("master_key", t.MasterKey)
	d.add("change_idx", t.ChangeIdx)
	d.addNode("change_key", t.ChangeKey)
	d.addOffset("address_off", t.AddressOff)
	d.add("address", t.Addresses.document())

	return d
}

func (t *ElectrumV2Tree) nodes() []Node {
	return collect(t.Addresses, t.MasterKey, t.ChangeKey)
}

// MoneroTree holds the Monero keys and the subaddresses of one account
type MoneroTree struct {
	Keys          *MoneroKeys
	AccountIdx    uint32
	SubaddressOff uint32
	Subaddresses  Addresses
}

func (t *MoneroTree) document() Document {
	var d Document

	if t.Keys != nil {
		d.add("key", t.Keys.Document())
	}
	d.add("account_idx", t.AccountIdx)
	d.addOffset("subaddress_off", t.SubaddressOff)
	d.add("subaddress", t.Subaddresses.document())

	return d
}

func (t *MoneroTree) nodes() []Node {
	var nodes []Node
	if t.Keys != nil {
		nodes = append(nodes, t.Keys)
	}

	for _, e := range t.Subaddresses {
		nodes = append(nodes, e.Node)
	}

	return nodes
}

// AlgorandTree is the single key Algorand tree
type AlgorandTree struct {
	MasterKey *KeyNode
}

func (t *AlgorandTree) document() Document {
	var d Document

	d.addNode("master_key", t.MasterKey)

	return d
}

func (t *AlgorandTree) nodes() []Node {
	return collect(nil, t.MasterKey)
}

// SubstrateTree holds the master key and the key at an optional path
type SubstrateTree struct {
	MasterKey *KeyNode
	Path      string
	PathKey   *KeyNode
}

func (t *SubstrateTree) document() Document {
	var d Document

	d.addNode("master_key", t.MasterKey)
	d.addString("path", t.Path)
	d.addNode("path_key", t.PathKey)

	return d
}

func (t *SubstrateTree) nodes() []Node {
	return collect(nil, t.MasterKey, t.PathKey)
}

func collect(addresses Addresses, keys ...*KeyNode) []Node {
	nodes := make([]Node, 0, len(keys)+len(addresses))
	for _, k := range keys {
		if k != nil {
			nodes = append(nodes, k)
		}
	}

	for _, e := range addresses {
		nodes = append(nodes, e.Node)
	}

	return nodes
}
