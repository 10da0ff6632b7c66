package main

import "github.com/iburimskiy/particle-morph/cmd"

func main() {
	cmd.Execute()
}
