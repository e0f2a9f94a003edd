//go:build cli
// +build cli

package main

import (
	"storefront.GO/cmd"
	"storefront.GO/config"
	_ "storefront.GO/custom"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
