// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - GraphCodec: reads and writes one external representation
//   - CodecRegistry: resolves the codec for a format
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - SyncJournal: conversion history persistence. Without it, the history
//     command is disabled and sync runs unrecorded.
//   - SettingsStore: configuration persistence. Without it, defaults apply.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or codec package
package driven
