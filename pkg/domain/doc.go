/*
Package domain contains the core data model of the SAIL playground.

It defines the values that flow through a render cycle and is kept free of
I/O, parsing and rendering concerns.

# Key Entities

  - Node: one widget of a SAIL tree (form layout, text field, dropdown, button).
    The absence node is a nil *Node.
  - State: the session-wide mapping from field key to current value.
  - History: the append-only log of frozen trees, one per successful cycle.
  - EvaluationError: the single failure kind, returned as a value.
  - LifecycleHooks: optional callbacks fired around cycles and interactions.

Field values entering State go through SanitizeValue.
*/
package domain
