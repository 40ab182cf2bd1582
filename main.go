package main

import "github.com/frahmantamala/expense-bot/cmd"

func main() {
	cmd.Execute()
}
