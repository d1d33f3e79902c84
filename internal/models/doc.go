// Package models defines the core domain models for Tabsplit.
//
// # Entities
//
//   - Bill: one shared-expense event with derived subtotal/tax/tip fields
//   - BillItem: a line item on a bill (unit price and quantity)
//   - Participant: a person splitting a bill, identified by display name
//   - ItemClaim: a participant's stake (in item-quantity units) on an item
//
// # Derived types
//
// ParticipantSplit and ItemSummary are computed fresh on every read by the
// calculator package and are never persisted.
//
// # Design Principles
//
//  1. **No identity system**: participants are self-asserted display names;
//     the participant ID is a client-held capability, not a verified session.
//  2. **Avoid circular references**: relationships use ID strings, never
//     pointers between persisted entities.
//  3. **Derived money fields are caches**: Bill.Subtotal and Bill.TipAmount
//     are recomputed server-side on every write that affects them, never
//     trusted from the client.
package models
