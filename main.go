package main

import "github.com/hopngo/a11y-audit/cmd"

func main() {
	cmd.Execute()
}
