/*
Package queue defines the tasks to be performed to grow a tree
as well as an interface for a Queue to manage them.

It also provides an in-memory FIFO implementation of the Queue interface
*/
package queue
