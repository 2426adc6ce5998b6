package main

import "github.com/Tiliavir/eventcal/cmd"

func main() {
	cmd.Execute()
}
