package main

import "github.com/KaramelBytes/districtlens-cli/cmd"

func main() {
	cmd.Execute()
}
