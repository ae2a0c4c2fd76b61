// Package trace replays allocation scripts against an arena.
//
// A script is line oriented. Blank lines and anything after '#' are ignored:
//
//	a = alloc 100        # bind a to a 100-byte block
//	b = calloc 4 25      # 100 zeroed bytes
//	a = realloc a 300    # resize; the source handle is consumed
//	c = realloc nil 64   # same as alloc
//	free b
//	check                # verify the chain and every live payload
//
// Sizes accept any prefix understood by strconv (0x40, 0o100, 0b1000000).
//
// Run fills every payload with a pattern derived from the line that created
// it, so a replay also catches payload corruption: calloc must hand back
// zeroes and realloc must carry the old prefix across.
package trace
