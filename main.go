package main

import "github.com/ZacxDev/commands-site/cmd"

func main() {
	cmd.Execute()
}
