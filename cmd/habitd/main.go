package main

import "github.com/sandeepkv93/habitd/internal/cli"

func main() {
	cli.Execute()
}
