package main

import "review-lifecycle-api/app"

func main() {
	app.Run()
}
