package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWelcomeEmbed(t *testing.T) {
	embed := welcomeEmbed([]string{"priconne-notifications", "princess-connect-notifications"})
	require.Len(t, embed.Fields, 1)
	assert.Contains(t, embed.Fields[0].Value, "`#priconne-notifications` or `#princess-connect-notifications`")
}
