// Package sim drives a validated solver over a time horizon. TimeMap
// integrates one set step by step, feeding observers and metrics between
// steps; Cover splits a box and integrates the parts concurrently.
package sim
