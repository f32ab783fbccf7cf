package main

import "github.com/nguyentranbao-ct/storefront-core/cmd"

func main() {
	cmd.Execute()
}
