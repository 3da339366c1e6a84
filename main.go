package main

import "github.com/Harrypapa1/pdf-processorHOC-HOL/cmd"

func main() {
	cmd.Execute()
}
