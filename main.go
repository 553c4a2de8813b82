package main

import "github.com/posa-app/posa-cli/cmd"

func main() {
	cmd.Execute()
}
