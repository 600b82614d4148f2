package hc_test

import (
	"testing"

	"github.com/martinthomson/minhpack/hc"
	"github.com/stvp/assert"
)

type tableStateEntry struct {
	name  string
	value string
}

type tableState struct {
	size    hc.TableCapacity
	entries []tableStateEntry
}

func checkDynamicTable(t *testing.T, table *hc.IndexTable, ts *tableState) {
	assert.Equal(t, ts.size, table.Size())
	assert.Equal(t, table.StartIndex()+len(ts.entries), table.EndIndex())
	for i, e := range ts.entries {
		// The initial offset for dynamic entries is 62 in HPACK.
		h := table.HeaderAt(62 + i)
		assert.NotNil(t, h)
		assert.Equal(t, e.name, h.Name)
		assert.Equal(t, e.value, h.Value)
	}
}

// A block is one header list encoded under one set of options; the
// table state is checked after the block on both sides.
type headerBlock struct {
	headers []hc.Header
	options hc.EncodeOptions
	hpack   string
	table   tableState
}

// The RFC 7541 Appendix C examples. Blocks within a case share one
// codec instance; C.5/C.6 bound the table to 256 octets to force
// eviction.
var testCases = []struct {
	maxTableSize hc.TableCapacity
	blocks       []headerBlock
}{
	{
		// C.2.1 Literal Header Field with Indexing
		maxTableSize: hc.DefaultHeaderTableSize,
		blocks: []headerBlock{
			{
				headers: []hc.Header{
					{Name: "custom-key", Value: "custom-header"},
				},
				hpack: "400a637573746f6d2d6b65790d637573746f6d2d686561646572",
				table: tableState{
					size: 55,
					entries: []tableStateEntry{
						{"custom-key", "custom-header"},
					},
				},
			},
		},
	},
	{
		// C.2.2 Literal Header Field without Indexing
		maxTableSize: hc.DefaultHeaderTableSize,
		blocks: []headerBlock{
			{
				headers: []hc.Header{
					{Name: ":path", Value: "/sample/path"},
				},
				options: hc.EncodeOptions{IndexPolicy: hc.NotIndexHeader},
				hpack:   "040c2f73616d706c652f70617468",
				table:   tableState{size: 0},
			},
		},
	},
	{
		// C.2.3 Literal Header Field Never Indexed
		maxTableSize: hc.DefaultHeaderTableSize,
		blocks: []headerBlock{
			{
				headers: []hc.Header{
					{Name: "password", Value: "secret"},
				},
				options: hc.EncodeOptions{IndexPolicy: hc.NeverIndexHeader},
				hpack:   "100870617373776f726406736563726574",
				table:   tableState{size: 0},
			},
		},
	},
	{
		// C.2.4 Indexed Header Field
		maxTableSize: hc.DefaultHeaderTableSize,
		blocks: []headerBlock{
			{
				headers: []hc.Header{
					{Name: ":method", Value: "GET"},
				},
				hpack: "82",
				table: tableState{size: 0},
			},
		},
	},
	{
		// C.3 Request Examples without Huffman Coding
		maxTableSize: hc.DefaultHeaderTableSize,
		blocks: []headerBlock{
			{
				headers: []hc.Header{
					{Name: ":method", Value: "GET"},
					{Name: ":scheme", Value: "http"},
					{Name: ":path", Value: "/"},
					{Name: ":authority", Value: "www.example.com"},
				},
				hpack: "828684410f7777772e6578616d706c652e636f6d",
				table: tableState{
					size: 57,
					entries: []tableStateEntry{
						{":authority", "www.example.com"},
					},
				},
			},
			{
				headers: []hc.Header{
					{Name: ":method", Value: "GET"},
					{Name: ":scheme", Value: "http"},
					{Name: ":path", Value: "/"},
					{Name: ":authority", Value: "www.example.com"},
					{Name: "cache-control", Value: "no-cache"},
				},
				hpack: "828684be58086e6f2d6361636865",
				table: tableState{
					size: 110,
					entries: []tableStateEntry{
						{"cache-control", "no-cache"},
						{":authority", "www.example.com"},
					},
				},
			},
			{
				headers: []hc.Header{
					{Name: ":method", Value: "GET"},
					{Name: ":scheme", Value: "https"},
					{Name: ":path", Value: "/index.html"},
					{Name: ":authority", Value: "www.example.com"},
					{Name: "custom-key", Value: "custom-value"},
				},
				hpack: "828785bf400a637573746f6d2d6b65790c637573746f6d2d76616c7565",
				table: tableState{
					size: 164,
					entries: []tableStateEntry{
						{"custom-key", "custom-value"},
						{"cache-control", "no-cache"},
						{":authority", "www.example.com"},
					},
				},
			},
		},
	},
	{
		// C.4 Request Examples with Huffman Coding
		maxTableSize: hc.DefaultHeaderTableSize,
		blocks: []headerBlock{
			{
				headers: []hc.Header{
					{Name: ":method", Value: "GET"},
					{Name: ":scheme", Value: "http"},
					{Name: ":path", Value: "/"},
					{Name: ":authority", Value: "www.example.com"},
				},
				options: hc.EncodeOptions{EncodeName: true, EncodeValue: true},
				hpack:   "828684418cf1e3c2e5f23a6ba0ab90f4ff",
				table: tableState{
					size: 57,
					entries: []tableStateEntry{
						{":authority", "www.example.com"},
					},
				},
			},
			{
				headers: []hc.Header{
					{Name: ":method", Value: "GET"},
					{Name: ":scheme", Value: "http"},
					{Name: ":path", Value: "/"},
					{Name: ":authority", Value: "www.example.com"},
					{Name: "cache-control", Value: "no-cache"},
				},
				options: hc.EncodeOptions{EncodeName: true, EncodeValue: true},
				hpack:   "828684be5886a8eb10649cbf",
				table: tableState{
					size: 110,
					entries: []tableStateEntry{
						{"cache-control", "no-cache"},
						{":authority", "www.example.com"},
					},
				},
			},
			{
				headers: []hc.Header{
					{Name: ":method", Value: "GET"},
					{Name: ":scheme", Value: "https"},
					{Name: ":path", Value: "/index.html"},
					{Name: ":authority", Value: "www.example.com"},
					{Name: "custom-key", Value: "custom-value"},
				},
				options: hc.EncodeOptions{EncodeName: true, EncodeValue: true},
				hpack:   "828785bf408825a849e95ba97d7f8925a849e95bb8e8b4bf",
				table: tableState{
					size: 164,
					entries: []tableStateEntry{
						{"custom-key", "custom-value"},
						{"cache-control", "no-cache"},
						{":authority", "www.example.com"},
					},
				},
			},
		},
	},
	{
		// C.5 Response Examples without Huffman Coding
		maxTableSize: 256,
		blocks: []headerBlock{
			{
				headers: []hc.Header{
					{Name: ":status", Value: "302"},
					{Name: "cache-control", Value: "private"},
					{Name: "date", Value: "Mon, 21 Oct 2013 20:13:21 GMT"},
					{Name: "location", Value: "https://www.example.com"},
				},
				hpack: "4803333032580770726976617465611d4d6f6e2c203231204f637420" +
					"323031332032303a31333a323120474d546e1768747470733a2f2f77" +
					"77772e6578616d706c652e636f6d",
				table: tableState{
					size: 222,
					entries: []tableStateEntry{
						{"location", "https://www.example.com"},
						{"date", "Mon, 21 Oct 2013 20:13:21 GMT"},
						{"cache-control", "private"},
						{":status", "302"},
					},
				},
			},
			{
				headers: []hc.Header{
					{Name: ":status", Value: "307"},
					{Name: "cache-control", Value: "private"},
					{Name: "date", Value: "Mon, 21 Oct 2013 20:13:21 GMT"},
					{Name: "location", Value: "https://www.example.com"},
				},
				hpack: "4803333037c1c0bf",
				table: tableState{
					size: 222,
					entries: []tableStateEntry{
						{":status", "307"},
						{"location", "https://www.example.com"},
						{"date", "Mon, 21 Oct 2013 20:13:21 GMT"},
						{"cache-control", "private"},
					},
				},
			},
			{
				headers: []hc.Header{
					{Name: ":status", Value: "200"},
					{Name: "cache-control", Value: "private"},
					{Name: "date", Value: "Mon, 21 Oct 2013 20:13:22 GMT"},
					{Name: "location", Value: "https://www.example.com"},
					{Name: "content-encoding", Value: "gzip"},
					{Name: "set-cookie", Value: "foo=ASDJKHQKBZXOQWEOPIUAXQWEOIU; max-age=3600; version=1"},
				},
				hpack: "88c1611d4d6f6e2c203231204f637420323031332032303a31333a32" +
					"3220474d54c05a04677a69707738666f6f3d4153444a4b48514b425a" +
					"584f5157454f50495541585157454f49553b206d61782d6167653d33" +
					"3630303b2076657273696f6e3d31",
				table: tableState{
					size: 215,
					entries: []tableStateEntry{
						{"set-cookie", "foo=ASDJKHQKBZXOQWEOPIUAXQWEOIU; max-age=3600; version=1"},
						{"content-encoding", "gzip"},
						{"date", "Mon, 21 Oct 2013 20:13:22 GMT"},
					},
				},
			},
		},
	},
	{
		// C.6 Response Examples with Huffman Coding
		maxTableSize: 256,
		blocks: []headerBlock{
			{
				headers: []hc.Header{
					{Name: ":status", Value: "302"},
					{Name: "cache-control", Value: "private"},
					{Name: "date", Value: "Mon, 21 Oct 2013 20:13:21 GMT"},
					{Name: "location", Value: "https://www.example.com"},
				},
				options: hc.EncodeOptions{EncodeName: true, EncodeValue: true},
				hpack: "488264025885aec3771a4b6196d07abe941054d444a8200595040b81" +
					"66e082a62d1bff6e919d29ad171863c78f0b97c8e9ae82ae43d3",
				table: tableState{
					size: 222,
					entries: []tableStateEntry{
						{"location", "https://www.example.com"},
						{"date", "Mon, 21 Oct 2013 20:13:21 GMT"},
						{"cache-control", "private"},
						{":status", "302"},
					},
				},
			},
			{
				headers: []hc.Header{
					{Name: ":status", Value: "307"},
					{Name: "cache-control", Value: "private"},
					{Name: "date", Value: "Mon, 21 Oct 2013 20:13:21 GMT"},
					{Name: "location", Value: "https://www.example.com"},
				},
				options: hc.EncodeOptions{EncodeName: true, EncodeValue: true},
				hpack:   "4883640effc1c0bf",
				table: tableState{
					size: 222,
					entries: []tableStateEntry{
						{":status", "307"},
						{"location", "https://www.example.com"},
						{"date", "Mon, 21 Oct 2013 20:13:21 GMT"},
						{"cache-control", "private"},
					},
				},
			},
			{
				headers: []hc.Header{
					{Name: ":status", Value: "200"},
					{Name: "cache-control", Value: "private"},
					{Name: "date", Value: "Mon, 21 Oct 2013 20:13:22 GMT"},
					{Name: "location", Value: "https://www.example.com"},
					{Name: "content-encoding", Value: "gzip"},
					{Name: "set-cookie", Value: "foo=ASDJKHQKBZXOQWEOPIUAXQWEOIU; max-age=3600; version=1"},
				},
				options: hc.EncodeOptions{EncodeName: true, EncodeValue: true},
				hpack: "88c16196d07abe941054d444a8200595040b8166e084a62d1bffc05a" +
					"839bd9ab77ad94e7821dd7f2e6c7b335dfdfcd5b3960d5af27087f36" +
					"72c1ab270fb5291f9587316065c003ed4ee5b1063d5007",
				table: tableState{
					size: 215,
					entries: []tableStateEntry{
						{"set-cookie", "foo=ASDJKHQKBZXOQWEOPIUAXQWEOIU; max-age=3600; version=1"},
						{"content-encoding", "gzip"},
						{"date", "Mon, 21 Oct 2013 20:13:22 GMT"},
					},
				},
			},
		},
	},
}
