// cmd/api/main.go
package main

import "github.com/your-org/storefront-backend/internal/cmd"

func main() {
	cmd.Execute()
}
