package main

import "github.com/arl/landmass/cmd/landmass/cmd"

func main() {
	cmd.Execute()
}
