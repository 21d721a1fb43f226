package common

import "github.com/strangergwenn/AstralShipwright-sub002/internal/application/mediator"

// Request and Response are re-exported so handlers only import common
type Request = mediator.Request
type Response = mediator.Response
