// Package printjob models a request to print an order on the restaurant's POS printer.
//
// A job starts PENDING and ends SUCCESS or FAILED after a bounded number of delivery
// attempts. Terminal jobs never change again. Jobs are retained for a day.
package printjob
