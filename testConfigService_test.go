package main

type testConfigService struct {
	handler *apiHandler
	addr    string
	stopped bool
}

func (t *testConfigService) launch(handler *apiHandler, addr string) {
	t.handler = handler
	t.addr = addr
}

func (t *testConfigService) stop() {
	t.stopped = true
}
