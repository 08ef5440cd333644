package main

import "scenelink/cmd/scenectl/cmd"

func main() {
	cmd.Execute()
}
