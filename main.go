package main

import "github.com/bvoo/arcadewiki/cmd"

func main() {
	cmd.Execute()
}
