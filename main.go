package main

import "github.com/Rorical/WolofBridge/cmd"

func main() {
	cmd.Execute()
}
