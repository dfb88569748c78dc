package qht_test

import (
	"fmt"

	"github.com/tamirms/qht"
)

// This example demonstrates basic membership testing.
func Example() {
	// 1024 buckets of 8 slots, 16-bit fingerprints: 16 KiB of storage.
	f, err := qht.New(1024, 8, 16)
	if err != nil {
		panic(err)
	}

	f.Insert([]byte("apple"))
	f.Insert([]byte("banana"))

	fmt.Println("apple:", f.Lookup([]byte("apple")))
	fmt.Println("banana:", f.Lookup([]byte("banana")))
	fmt.Println("grape:", f.Lookup([]byte("grape")))

	// Output:
	// apple: true
	// banana: true
	// grape: false
}

// This example deduplicates a stream with TestAndInsert.
func Example_streamDedup() {
	f, err := qht.New(1024, 8, 16)
	if err != nil {
		panic(err)
	}

	stream := []string{"a", "b", "a", "c", "b", "a"}
	duplicates := 0
	for _, e := range stream {
		if f.TestAndInsertString(e) {
			duplicates++
		}
	}

	fmt.Println("duplicates:", duplicates)

	// Output:
	// duplicates: 3
}

// This example uses FIFO eviction to track a sliding window of recent
// elements in a single bucket.
func Example_slidingWindow() {
	f, err := qht.New(1, 4, 32, qht.WithEviction(qht.EvictFIFO))
	if err != nil {
		panic(err)
	}

	for i := uint64(1); i <= 5; i++ {
		f.InsertUint64(i) // inserting 5 rotates 1 out
	}

	fmt.Println("1 still tracked:", f.LookupUint64(1))
	fmt.Println("5 tracked:", f.LookupUint64(5))

	// Output:
	// 1 still tracked: false
	// 5 tracked: true
}
