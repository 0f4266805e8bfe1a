// Package models defines the persisted records for orderlines.
//
// # Models
//
//   - Order: an order owned by one customer, with its lines
//   - LineItem: one stored line of an order
//   - User: a registered customer account
//
// These are storage shapes only. The merge and validation rules for lines
// live in the order package; the service layer converts between the two.
//
// # Design Principles
//
// 1. **Plain data**: no behavior beyond constructors
// 2. **IDs not pointers**: relationships are expressed as ID strings
// 3. **Insertion order is data**: LineItem.Position records where a line sits
package models
