package hc

// TableCapacity is the type of the HPACK table capacity, in octets.
type TableCapacity uint

// minEntrySize bounds the ring capacity: a name holds at least one
// byte on top of the 32-octet overhead, but a value can be empty.
const minEntrySize = 32 + 1

// headerQueue is a fixed-capacity ring of headers, oldest at the head.
type headerQueue struct {
	buf   []Header
	head  int
	count int
}

func (q *headerQueue) len() int {
	return q.count
}

func (q *headerQueue) full() bool {
	return q.count == len(q.buf)
}

// push appends h as the newest entry.
func (q *headerQueue) push(h Header) {
	q.buf[(q.head+q.count)%len(q.buf)] = h
	q.count++
}

// pop removes the oldest entry.
func (q *headerQueue) pop() {
	q.buf[q.head] = Header{}
	q.head = (q.head + 1) % len(q.buf)
	q.count--
}

// oldest returns the entry that pop would remove.
func (q *headerQueue) oldest() *Header {
	return &q.buf[q.head]
}

// fromNewest returns the i-th entry counting from the newest.
func (q *headerQueue) fromNewest(i int) *Header {
	return &q.buf[(q.head+q.count-1-i)%len(q.buf)]
}

// IndexTable is a size-bounded ordered sequence of headers addressed by
// absolute index, newest at the smallest index. The static table and
// both per-direction dynamic tables are all instances of it; only the
// static table and the encoder-side dynamic table carry the
// reverse-lookup maps.
type IndexTable struct {
	startIndex  int
	needIndexes bool
	// addTimes grows by one for every inserted entry, including ones
	// evicted since. The absolute index of the entry inserted at time k
	// is startIndex + (addTimes - k) - 1 while it remains queued.
	addTimes uint64
	maxSize  TableCapacity
	size     TableCapacity
	queue    headerQueue

	// Reverse indexes map an entry to the time it was last added. Older
	// duplicates stay in the queue but are shadowed here; the encoder
	// only needs some valid index, and the shadowing entry is the last
	// of the duplicates to be evicted.
	headerIndex map[Header]uint64
	nameIndex   map[string]uint64
}

// NewIndexTable builds a dynamic table bounded to maxSize octets.
// Encoder-side tables pass needIndexes to enable the reverse lookups.
func NewIndexTable(maxSize TableCapacity, startIndex int, needIndexes bool) *IndexTable {
	numHeaders := int(maxSize)/minEntrySize + 1
	return newIndexTable(maxSize, startIndex, needIndexes, numHeaders)
}

func newIndexTable(maxSize TableCapacity, startIndex int, needIndexes bool, numHeaders int) *IndexTable {
	table := &IndexTable{
		startIndex:  startIndex,
		needIndexes: needIndexes,
		maxSize:     maxSize,
		queue:       headerQueue{buf: make([]Header, numHeaders)},
	}
	if needIndexes {
		table.headerIndex = make(map[Header]uint64, numHeaders*2)
		table.nameIndex = make(map[string]uint64, numHeaders*2)
	}
	return table
}

// HeaderAt returns the entry at absolute index idx, or nil when idx is
// outside [StartIndex, EndIndex).
func (table *IndexTable) HeaderAt(idx int) *Header {
	if idx < table.startIndex || idx >= table.EndIndex() {
		return nil
	}
	return table.queue.fromNewest(idx - table.startIndex)
}

// IndexOfHeader returns the current absolute index of the newest entry
// matching both name and value, or 0 if there is none.
func (table *IndexTable) IndexOfHeader(h Header) int {
	v, ok := table.headerIndex[h]
	if !ok {
		return 0
	}
	return table.startIndex + int(table.addTimes-v) - 1
}

// IndexOfName returns the current absolute index of the newest entry
// matching name, or 0 if there is none.
func (table *IndexTable) IndexOfName(name string) int {
	v, ok := table.nameIndex[name]
	if !ok {
		return 0
	}
	return table.startIndex + int(table.addTimes-v) - 1
}

// Empty reports whether the table holds no entries.
func (table *IndexTable) Empty() bool {
	return table.queue.len() == 0
}

// Size is the occupied capacity in octets.
func (table *IndexTable) Size() TableCapacity {
	return table.size
}

// MaxSize is the configured capacity in octets.
func (table *IndexTable) MaxSize() TableCapacity {
	return table.maxSize
}

// StartIndex is the absolute index of the newest entry.
func (table *IndexTable) StartIndex() int {
	return table.startIndex
}

// EndIndex is one past the absolute index of the oldest entry.
func (table *IndexTable) EndIndex() int {
	return table.startIndex + table.queue.len()
}

// popHeader evicts the oldest entry.
func (table *IndexTable) popHeader() {
	h := table.queue.oldest()
	id := table.addTimes - uint64(table.queue.len())
	table.removeHeaderFromIndexes(*h, id)
	table.size -= h.Size()
	table.queue.pop()
}

func (table *IndexTable) removeHeaderFromIndexes(h Header, expectedID uint64) {
	if !table.needIndexes {
		return
	}
	// Only drop a mapping that still points at the evicted entry; a
	// newer duplicate keeps its (shadowing) mapping alive.
	if id, ok := table.headerIndex[h]; ok && id == expectedID {
		delete(table.headerIndex, h)
	}
	if id, ok := table.nameIndex[h.Name]; ok && id == expectedID {
		delete(table.nameIndex, h.Name)
	}
}

// AddHeader inserts h as the newest entry, evicting from the oldest end
// until it fits. An entry larger than the whole table empties the table
// and is not stored, per RFC 7541 Section 4.1.
func (table *IndexTable) AddHeader(h Header) {
	entrySize := h.Size()
	for !table.Empty() && table.size+entrySize > table.maxSize {
		table.popHeader()
	}
	if entrySize > table.maxSize {
		return
	}
	table.size += entrySize
	table.queue.push(h)
	id := table.addTimes
	table.addTimes++
	if table.needIndexes {
		// Overwrite any previous mapping for the same key.
		if h.Value != "" {
			table.headerIndex[h] = id
		}
		table.nameIndex[h.Name] = id
	}
}
