// Package stream serves live discovery records to websocket clients.
//
// When the scan command is started with --listen, every normalized record
// is also broadcast as a JSON object on the /events endpoint. The feed is
// an observation surface only: it has no influence on the scan, carries no
// history, and drops clients that cannot keep up with the record rate.
package stream
