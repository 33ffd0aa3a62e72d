// Package roulette implements the wheel core: it turns the numbers ring mesh
// into an ordered pocket table, keeps that table turning with the wheel,
// drives the spin/launch round and decides where the ball settled.
//
// Everything is single-writer. A Round holds all mutable state and is passed
// to Wheel.Reset and Wheel.Tick, which the host calls once per rendered frame.
// The host owns the meshes and the ball body and exposes them through the
// Scene and Physics interfaces.
package roulette
