package wallet

func (n *KeyNode) clone() Node {
	return cloneKey(n)
}

func (k *MoneroKeys) clone() Node {
	c := *k

	return &c
}

func (s *MoneroSubaddress) clone() Node {
	c := *s

	return &c
}

func cloneKey(k *KeyNode) *KeyNode {
	if k == nil {
		return nil
	}

	c := *k

	return &c
}

func cloneIndex(idx *uint32) *uint32 {
	if idx == nil {
		return nil
	}

	c := *idx

	return &c
}

func (a Addresses) clone() Addresses {
	if a == nil {
		return nil
	}

	c := make(Addresses, len(a))
	for i, e := range a {
		c[i] = AddressEntry{Label: e.Label, Node: e.Node.clone()}
	}

	return c
}

func (t *BipTree) clone() Tree {
	return &BipTree{
		MasterKey:  cloneKey(t.MasterKey),
		PurposeKey: cloneKey(t.PurposeKey),
		CoinKey:    cloneKey(t.CoinKey),
		AccountIdx: cloneIndex(t.AccountIdx),
		AccountKey: cloneKey(t.AccountKey),
		ChangeIdx:  cloneIndex(t.ChangeIdx),
		ChangeKey:  cloneKey(t.ChangeKey),
		AddressOff: t.AddressOff,
		Addresses:  t.Addresses.clone(),
	}
}

func (t *CardanoTree) clone() Tree {
	return &CardanoTree{
		MasterKey:  cloneKey(t.MasterKey),
		PurposeKey: cloneKey(t.PurposeKey),
		CoinKey:    cloneKey(t.CoinKey),
		AccountIdx: cloneIndex(t.AccountIdx),
		AccountKey: cloneKey(t.AccountKey),
		StakingKey: cloneKey(t.StakingKey),
		ChangeIdx:  cloneIndex(t.ChangeIdx),
		ChangeKey:  cloneKey(t.ChangeKey),
		AddressOff: t.AddressOff,
		Addresses:  t.Addresses.clone(),
	}
}

func (t *ElectrumV1Tree) clone() Tree {
	return &ElectrumV1Tree{
		MasterKey:  cloneKey(t.MasterKey),
		ChangeIdx:  t.ChangeIdx,
		AddressOff: t.AddressOff,
		Addresses:  t.Addresses.clone(),
	}
}

func (t *ElectrumV2Tree) clone() Tree {
	return &ElectrumV2Tree{
		MasterKey:  cloneKey(t.MasterKey),
		ChangeIdx:  t.ChangeIdx,
		ChangeKey:  cloneKey(t.ChangeKey),
		AddressOff: t.AddressOff,
		Addresses:  t.Addresses.clone(),
	}
}

func (t *MoneroTree) clone() Tree {
	c := &MoneroTree{
		AccountIdx:    t.AccountIdx,
		SubaddressOff: t.SubaddressOff,
		Subaddresses:  t.Subaddresses.clone(),
	}
	if t.Keys != nil {
		keys := *t.Keys
		c.Keys = &keys
	}

	return c
}

func (t *AlgorandTree) clone() Tree {
	return &AlgorandTree{MasterKey: cloneKey(t.MasterKey)}
}

func (t *SubstrateTree) clone() Tree {
	return &SubstrateTree{
		MasterKey: cloneKey(t.MasterKey),
		Path:      t.Path,
		PathKey:   cloneKey(t.PathKey),
	}
}
