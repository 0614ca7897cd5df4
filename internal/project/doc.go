// Package project holds the persisted document model: projects made of
// components, components made of rows and row groups, and the progress
// records that track one physical instance of every component.
package project
