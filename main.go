package main

import "github.com/jlighthall/tlcompare/cmd"

func main() {
	cmd.Execute()
}
