package handler

var SafeNext = safeNext
