// Package discovery turns NGINX configuration text into a typed,
// queryable model: lex and parse it into a syntax tree (see the
// token, lexer and ast packages), recognize well-known directive
// shapes into records (see the extract package), then query those
// records through this package's read-only Discovery façade.
//
// A typical caller only needs this package and extract:
//
//	d, err := discovery.FromText(configBytes)
//	if err != nil {
//		return err
//	}
//	for _, s := range d.SSLServers() {
//		fmt.Println(s.ServerNames, s.Ports())
//	}
package discovery
