package docker

// SetTTY overrides terminal detection for Run.
func (c *Client) SetTTY(tty bool) {
	c.tty = tty
}
