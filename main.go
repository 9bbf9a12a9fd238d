package main

import "github.com/johnwondoh/careroster/cmd"

func main() {
	cmd.Execute()
}
