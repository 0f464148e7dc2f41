// Package ninja models the statements of a ninja build file (rules, build
// statements and default targets) and accumulates them into a pretty-printed
// document with Writer.
//
// Writer guarantees that every rule name is declared exactly once, no later
// than the first build statement that uses it. Rule identity is the name
// alone (RuleKey); build identity is the rule plus outputs (BuildKey).
package ninja
