package main

import "finplan/cmd"

func main() {
	cmd.Execute()
}
