package main

import "github.com/mj1618/windows-mcp/cmd"

func main() {
	cmd.Execute()
}
