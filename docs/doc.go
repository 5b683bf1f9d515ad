// Package docs provides generated OpenAPI documentation.
//
// pagenum API
//
//	@title			pagenum API
//	@version		1.0
//	@description	Add page numbers to PDF documents with a live preview.
//
//	@contact.name	API Support
//	@contact.url	https://github.com/jackzampolin/pagenum
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@schemes	http
package docs

//go:generate swag init -g ../cmd/pagenum/serve.go -o ./swagger --parseDependency --parseInternal
