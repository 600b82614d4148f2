package hc

import "sync"

// staticTableHeaders is the read-only header list from RFC 7541
// Appendix A, in list order; absolute indexes 1..61 map onto it.
var staticTableHeaders = [...]Header{
	{Name: ":authority"},
	{Name: ":method", Value: "GET"},
	{Name: ":method", Value: "POST"},
	{Name: ":path", Value: "/"},
	{Name: ":path", Value: "/index.html"},
	{Name: ":scheme", Value: "http"},
	{Name: ":scheme", Value: "https"},
	{Name: ":status", Value: "200"},
	{Name: ":status", Value: "204"},
	{Name: ":status", Value: "206"},
	{Name: ":status", Value: "304"},
	{Name: ":status", Value: "400"},
	{Name: ":status", Value: "404"},
	{Name: ":status", Value: "500"},
	{Name: "accept-charset"},
	{Name: "accept-encoding", Value: "gzip, deflate"},
	{Name: "accept-language"},
	{Name: "accept-ranges"},
	{Name: "accept"},
	{Name: "access-control-allow-origin"},
	{Name: "age"},
	{Name: "allow"},
	{Name: "authorization"},
	{Name: "cache-control"},
	{Name: "content-disposition"},
	{Name: "content-encoding"},
	{Name: "content-language"},
	{Name: "content-length"},
	{Name: "content-location"},
	{Name: "content-range"},
	{Name: "content-type"},
	{Name: "cookie"},
	{Name: "date"},
	{Name: "etag"},
	{Name: "expect"},
	{Name: "expires"},
	{Name: "from"},
	{Name: "host"},
	{Name: "if-match"},
	{Name: "if-modified-since"},
	{Name: "if-none-match"},
	{Name: "if-range"},
	{Name: "if-unmodified-since"},
	{Name: "last-modified"},
	{Name: "link"},
	{Name: "location"},
	{Name: "max-forwards"},
	{Name: "proxy-authenticate"},
	{Name: "proxy-authorization"},
	{Name: "range"},
	{Name: "referer"},
	{Name: "refresh"},
	{Name: "retry-after"},
	{Name: "server"},
	{Name: "set-cookie"},
	{Name: "strict-transport-security"},
	{Name: "transfer-encoding"},
	{Name: "user-agent"},
	{Name: "vary"},
	{Name: "via"},
	{Name: "www-authenticate"},
}

// Process-wide immutable state, built once on first codec construction
// and shared read-only by every instance afterwards.
var (
	staticTable      *IndexTable
	hpackHuffmanTree *huffmanTree
	createOnce       sync.Once
)

func createStaticTables() {
	hpackHuffmanTree = newHuffmanTree()
	for i := range huffmanTable {
		hpackHuffmanTree.addLeaf(int32(i), huffmanTable[i])
	}
	table := newIndexTable(^TableCapacity(0), 1, true, len(staticTableHeaders))
	// Insert in reverse list order so that list position 1 ends up the
	// newest and therefore smallest-indexed entry.
	for i := len(staticTableHeaders) - 1; i >= 0; i-- {
		table.AddHeader(staticTableHeaders[i])
	}
	staticTable = table
}

func createStaticTablesOnce() {
	createOnce.Do(createStaticTables)
}
