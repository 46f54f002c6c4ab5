package main

// @title Library lending API
// @version 1.0
// @description Borrowing, returning, extending and loss reporting of library books.
// @BasePath /
func main() {
	Execute()
}
