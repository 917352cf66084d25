/*
Package pattern implements the command pattern micro-grammar: parsing
pattern definition strings into element sequences, matching token
sequences against them, and static shadow analysis between competing
patterns.

# Pattern Grammar

A pattern is a whitespace-separated sequence of elements:

	go home
	get coord <player>
	set speed <speed:num> [sprint:bool]

  - <name> or <name:type>  required slot, consumes exactly one token
  - [name] or [name:type]  optional slot, consumes one token when the
    next token is valid for its type
  - anything else          literal word, matched verbatim

Slot names follow identifier syntax and the type defaults to str when
omitted. Three rules are enforced at parse time: literal words cannot
follow a slot, required slots cannot follow optional slots, and slot
names are unique within a pattern. A bracketed form that does not
parse as a slot (a malformed name, for example) falls back to being a
literal word.

# Matching

Match walks elements and tokens in lockstep and requires the token
stream to be exactly exhausted. Matching is greedy and does not
backtrack: an optional slot never reconsiders a decision, and a token
the slot declines must be consumed by whatever follows. "set [x:int]"
therefore rejects ["set", "abc"]: the slot declines "abc", binds
absent, and the leftover token invalidates the match. This is a known
limitation, kept for predictability over cleverness.

# Shadowing

With patterns tried in declaration order, an earlier pattern can make
a later one unreachable:

	go <dir:str>
	go home

The second pattern never matches, since <dir:str> accepts "home".
CoveredBy implements the pairwise test and FindShadows scans an
ordered pattern list, reporting shadowed pairs so registration can
warn about dead patterns.
*/
package pattern
