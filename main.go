package main

import "github.com/jetstack/jwsign/cmd"

func main() {
	cmd.Execute()
}
