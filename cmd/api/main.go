package main

import "github.com/campulist/campulist/cmd/api/commands"

func main() {
	commands.Execute()
}
