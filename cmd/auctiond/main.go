package main

import "github.com/Fayob/Reverse-Dutch-Auction/internal/cli"

func main() {
	cli.Execute()
}
