package main

import "github.com/GabrielTofvesson/sudoku/cmd"

func main() {
	cmd.Execute()
}
