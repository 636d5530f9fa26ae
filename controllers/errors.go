package controllers

import "errors"

var ErrCartEmpty = errors.New("cart is empty")
