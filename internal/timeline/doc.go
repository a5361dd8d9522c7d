// Package timeline positions dated tasks and projects on a half-month
// Gantt window.
//
// The pure stages (Resolve, BuildForest, ComputeWindow, GridCols) take
// everything they need as arguments. Mutable state lives in two owned
// objects: OrderManager (persisted row order) and CollapseSet (ephemeral
// collapsed ids). Board composes the stages and exposes the commands a UI
// issues: move, collapse, and half-month navigation.
package timeline
