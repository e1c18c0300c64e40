package main

import "github.com/inovacc/azpanel/cmd"

func main() {
	cmd.Execute()
}
