package main

import "github.com/notargets/itkloaders/cmd"

func main() {
	cmd.Execute()
}
