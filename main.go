package main

import "github/chapool/go-hdwallet/cmd"

func main() {
	cmd.Execute()
}
