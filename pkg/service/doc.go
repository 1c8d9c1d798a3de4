// Package service drives named periodic services from a single logical clock.
//
// A Service pulls at most one item from its Source per tick and hands it
// to its Action. Fire times are monotonic deadlines on a grid anchored at
// the Manager epoch, so services with the same interval always fire in
// the same wake-up, ordered by priority. Actions run on a worker per
// service, so a slow action only delays its own service.
package service
