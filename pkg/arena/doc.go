// Package arena implements nalloc, a triple-arena bump allocator
// purpose-built for the memory access pattern of a zero-knowledge
// proof prover: a short burst of large, long-lived, never-individually-
// freed allocations, repeated once per proof.
//
// A Manager owns exactly three [BumpArena] instances — Witness,
// Polynomial, and Scratch — each backed by its own [vmb.Region], a
// page-aligned slab of virtual memory reserved straight from the
// kernel. Allocation inside an arena is a single atomic compare-and-
// swap against a monotonically increasing Cursor; there is no free
// list and no per-object bookkeeping, because nalloc's whole premise
// is that a prover never frees anything until an entire arena is
// discarded in bulk.
//
// The three arenas differ only in alignment and lifecycle policy:
// Witness (secret, wire-format-sensitive data) is wiped rather than
// merely reset, at a default 64-byte alignment; Polynomial (FFT/NTT
// working set) promotes large allocations to page alignment for
// SIMD and DMA friendliness; Scratch (transient per-round temporaries)
// uses the loosest policy and is the only arena a thread-local
// pre-claim cache ([slab.Cache]) is meant to sit in front of.
package arena
