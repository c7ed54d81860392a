package main

import "github.com/indiekitai/budget-cli/cmd"

func main() {
	cmd.Execute()
}
