// Package docs provides generated OpenAPI documentation.
//
// Scrapbook API
//
//	@title			Scrapbook API
//	@version		1.0
//	@description	Birthday scrapbook API: page layout, countdown context and the birthday chat companion.
//
//	@contact.name	API Support
//	@contact.url	https://github.com/jackzampolin/scrapbook
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@schemes	http https
package docs

//go:generate swag init -g ../cmd/scrapbook/serve.go -o . --outputTypes go --parseDependency --parseInternal
