// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

//go:build !debug

package qdd

// debugEnabled is false in ordinary builds; see debug.go for the
// debug-tagged counterpart.
const debugEnabled = false
