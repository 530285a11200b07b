package main

import "github.com/kinship-canada/ms-go-donations/cmd"

func main() {
	cmd.Execute()
}
