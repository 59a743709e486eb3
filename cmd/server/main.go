package main

import "gin-event-calendar/cmd/server/commands"

func main() {
	commands.Execute()
}
